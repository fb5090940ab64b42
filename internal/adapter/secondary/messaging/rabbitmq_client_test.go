package messaging

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/cashflow/mcp-gateway/internal/core"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

var errRejected = errors.New("rejected")

type recordingAcknowledger struct {
	acks  int
	nacks []bool // requeue flag of each nack
}

func (a *recordingAcknowledger) Ack(multiple bool) error {
	a.acks++
	return nil
}

func (a *recordingAcknowledger) Nack(multiple, requeue bool) error {
	a.nacks = append(a.nacks, requeue)
	return nil
}

func TestNewPublishing(t *testing.T) {
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	event := core.NewDispatchEvent(core.MethodProcessPayment, core.Fail(core.KindBadRequest, "invalid params"), 15*time.Millisecond, at)

	msg, err := newPublishing(event, at)
	require.NoError(t, err)

	require.Equal(t, "application/json", msg.ContentType)
	require.Equal(t, amqp.Persistent, msg.DeliveryMode)
	require.Equal(t, event.ID.String(), msg.MessageId)
	require.Equal(t, at, msg.Timestamp)

	var decoded core.DispatchEvent
	require.NoError(t, json.Unmarshal(msg.Body, &decoded))
	require.Equal(t, event.ID, decoded.ID)
	require.Equal(t, core.MethodProcessPayment, decoded.Method)
	require.Equal(t, core.OutcomeFailure, decoded.Outcome)
	require.Equal(t, core.KindBadRequest, decoded.ErrorKind)
	require.Equal(t, int64(15), decoded.DurationMs)
}

func TestHandleDelivery(t *testing.T) {
	event := core.NewDispatchEvent(core.MethodCreateCustomer, core.Succeed("customer", nil), time.Millisecond, time.Now())
	body, err := json.Marshal(event)
	require.NoError(t, err)

	isRejected := func(err error) bool { return errors.Is(err, errRejected) }

	tests := []struct {
		name        string
		body        []byte
		handlerErr  error
		permanent   func(error) bool
		wantAction  deliveryAction
		wantHandled bool
		wantAcks    int
		wantNacks   []bool
	}{
		{
			name:        "handled",
			body:        body,
			permanent:   isRejected,
			wantAction:  actionAck,
			wantHandled: true,
			wantAcks:    1,
		},
		{
			name:       "undecodable body",
			body:       []byte(`{not json`),
			permanent:  isRejected,
			wantAction: actionDrop,
			wantNacks:  []bool{false},
		},
		{
			name:        "permanent handler error",
			body:        body,
			handlerErr:  errRejected,
			permanent:   isRejected,
			wantAction:  actionAck,
			wantHandled: true,
			wantAcks:    1,
		},
		{
			name:        "transient handler error",
			body:        body,
			handlerErr:  errors.New("disk full"),
			permanent:   isRejected,
			wantAction:  actionRequeue,
			wantHandled: true,
			wantNacks:   []bool{true},
		},
		{
			name:        "no permanent classifier",
			body:        body,
			handlerErr:  errRejected,
			wantAction:  actionRequeue,
			wantHandled: true,
			wantNacks:   []bool{true},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &RabbitMQClient{logger: zaptest.NewLogger(t)}

			var handled []core.DispatchEvent
			handler := func(e core.DispatchEvent) error {
				handled = append(handled, e)
				return tt.handlerErr
			}

			action := client.handleDelivery("msg-1", tt.body, handler, tt.permanent)
			require.Equal(t, tt.wantAction, action)

			if tt.wantHandled {
				require.Len(t, handled, 1)
				require.Equal(t, event.ID, handled[0].ID)
			} else {
				require.Empty(t, handled)
			}

			ack := &recordingAcknowledger{}
			require.NoError(t, settle(ack, action))
			require.Equal(t, tt.wantAcks, ack.acks)
			require.Equal(t, tt.wantNacks, ack.nacks)
		})
	}
}
