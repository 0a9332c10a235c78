package booking

import (
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestMapAdmissionError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected error
	}{
		{"slot full", &pq.Error{Code: "GB001"}, ErrSlotFull},
		{"slot blocked", &pq.Error{Code: "GB002"}, ErrSlotUnavailable},
		{"slot missing", &pq.Error{Code: "GB003"}, ErrSlotNotFound},
		{"foreign key", &pq.Error{Code: "23503"}, ErrSlotNotFound},
		{"token collision", &pq.Error{Code: "23505"}, ErrDuplicateToken},
		{"wrapped", fmt.Errorf("insert: %w", &pq.Error{Code: "GB001"}), ErrSlotFull},
		{"serialization failure is left alone", &pq.Error{Code: "40001"}, nil},
		{"not a pq error", errors.New("connection reset"), nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, mapAdmissionError(tt.err))
		})
	}
}
