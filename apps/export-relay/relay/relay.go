// Package relay drains queued export payloads into a row sink.
package relay

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-lambda-go/events"
	"github.com/ledgerprint/ledgerprint-api/libs/go/interfaces"
	"github.com/ledgerprint/ledgerprint-api/libs/go/logger"
	"github.com/ledgerprint/ledgerprint-api/libs/go/types/business"
	"go.uber.org/zap"
)

// Relay forwards export messages published by the SQS sink to a downstream sink
type Relay struct {
	sink interfaces.RowSink
	log  *zap.Logger
}

// Result is the outcome of relaying a single message
type Result struct {
	MessageID string `json:"message_id"`
	Sheet     string `json:"sheet"`
	Rows      int    `json:"rows"`
	Delivered bool   `json:"delivered"`
	Retry     bool   `json:"retry"`
	Error     string `json:"error,omitempty"`
}

// New creates a relay writing to sink
func New(sink interfaces.RowSink, log *zap.Logger) *Relay {
	if log == nil {
		log = logger.Log
	}
	return &Relay{sink: sink, log: log}
}

// HandleSQSEvent relays every record and reports the ones worth retrying as batch item
// failures. Malformed messages are logged and dropped since redelivery cannot fix them.
func (r *Relay) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	r.log.Info("Export relay handling SQS event", zap.Int("record_count", len(event.Records)))

	var resp events.SQSEventResponse
	delivered, dropped := 0, 0
	for _, record := range event.Records {
		result := r.processRecord(ctx, record)
		switch {
		case result.Delivered:
			delivered++
		case result.Retry:
			resp.BatchItemFailures = append(resp.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		default:
			dropped++
		}
	}

	r.log.Info("Export relay completed",
		zap.Int("total", len(event.Records)),
		zap.Int("delivered", delivered),
		zap.Int("retrying", len(resp.BatchItemFailures)),
		zap.Int("dropped", dropped))
	return resp, nil
}

func (r *Relay) processRecord(ctx context.Context, record events.SQSMessage) Result {
	result := Result{MessageID: record.MessageId}

	payload, timestamp, err := decodePayload(record.Body)
	if err != nil {
		r.log.Error("Failed to decode export message",
			zap.String("message_id", record.MessageId),
			zap.Error(err))
		result.Error = err.Error()
		return result
	}
	result.Sheet = payload.Sheet
	result.Rows = len(payload.Data)

	if err := r.sink.Append(ctx, payload.Sheet, payload.Data, timestamp); err != nil {
		r.log.Warn("Failed to relay export rows",
			zap.String("message_id", record.MessageId),
			zap.String("sheet", payload.Sheet),
			zap.Int("rows", result.Rows),
			zap.Error(err))
		result.Error = err.Error()
		result.Retry = true
		return result
	}

	r.log.Debug("Relayed export rows",
		zap.String("message_id", record.MessageId),
		zap.String("sheet", payload.Sheet),
		zap.Int("rows", result.Rows))
	result.Delivered = true
	return result
}

// decodePayload parses a message body, keeping numeric cells exact and the original export time
func decodePayload(body string) (business.ExportPayload, time.Time, error) {
	var payload business.ExportPayload
	dec := json.NewDecoder(strings.NewReader(body))
	dec.UseNumber()
	if err := dec.Decode(&payload); err != nil {
		return payload, time.Time{}, fmt.Errorf("unmarshal error: %w", err)
	}
	if payload.Sheet == "" {
		return payload, time.Time{}, fmt.Errorf("message has no sheet")
	}
	timestamp, err := time.Parse(business.ExportTimestampLayout, payload.Timestamp)
	if err != nil {
		return payload, time.Time{}, fmt.Errorf("invalid timestamp %q: %w", payload.Timestamp, err)
	}
	return payload, timestamp, nil
}
