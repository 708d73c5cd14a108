// ABOUTME: Wire format for the persisted entry collection.
// ABOUTME: A JSON array of {content, timestamp-in-milliseconds} records with an explicit schema.

package diary

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"time"

	"github.com/harper/gratitude/internal/models"
)

var ErrMalformed = errors.New("malformed entry data")

// entryRecord is the persisted shape of one entry.
type entryRecord struct {
	Content   string      `json:"content"`
	Timestamp json.Number `json:"timestamp"`
}

// Encode serializes entries in the given order.
func Encode(entries []models.Entry) ([]byte, error) {
	records := make([]entryRecord, len(entries))
	for i, e := range entries {
		records[i] = entryRecord{
			Content:   e.Content,
			Timestamp: json.Number(fmt.Sprintf("%d", e.Timestamp.UnixMilli())),
		}
	}
	return json.Marshal(records)
}

// Decode parses a serialized collection. Any deviation from the schema is ErrMalformed.
func Decode(data []byte) ([]models.Entry, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	var records []*entryRecord
	if err := dec.Decode(&records); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data", ErrMalformed)
	}
	if records == nil {
		// JSON null is not a collection.
		return nil, fmt.Errorf("%w: not an array", ErrMalformed)
	}

	entries := make([]models.Entry, 0, len(records))
	for i, r := range records {
		if r == nil || r.Timestamp == "" {
			return nil, fmt.Errorf("%w: record %d has no timestamp", ErrMalformed, i)
		}
		ms, err := parseMillis(r.Timestamp)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrMalformed, i, err)
		}
		entries = append(entries, models.NewEntry(r.Content, time.UnixMilli(ms)))
	}
	return entries, nil
}

// parseMillis accepts integral and fractional millisecond values.
func parseMillis(n json.Number) (int64, error) {
	if ms, err := n.Int64(); err == nil {
		return ms, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	f = math.Round(f)
	if math.IsNaN(f) || f < math.MinInt64 || f >= math.MaxInt64 {
		return 0, fmt.Errorf("timestamp %s out of range", n)
	}
	return int64(f), nil
}
