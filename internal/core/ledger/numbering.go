package ledger

import (
	"fmt"
	"strconv"
	"time"

	"github.com/SscSPs/ledger_engine/internal/apperrors"
)

const (
	entryPrefixLayout = "200601"
	sequenceDigits    = 4
	maxSequence       = 9999
)

// EntryNumberPrefix returns the YYYYMM prefix shared by entries of date's month.
func EntryNumberPrefix(date time.Time) string {
	return date.UTC().Format(entryPrefixLayout)
}

// FormatEntryNumber joins a prefix and a sequence number, e.g. 2024030001.
func FormatEntryNumber(prefix string, seq int) string {
	return fmt.Sprintf("%s%0*d", prefix, sequenceDigits, seq)
}

// ParseSequence extracts the numeric sequence from an entry number carrying prefix.
func ParseSequence(prefix, number string) (int, error) {
	if len(number) != len(prefix)+sequenceDigits || number[:len(prefix)] != prefix {
		return 0, apperrors.NewValidationError("entryNumber", number, fmt.Sprintf("does not match prefix %s", prefix))
	}
	seq, err := strconv.Atoi(number[len(prefix):])
	if err != nil || seq < 0 {
		return 0, apperrors.NewValidationError("entryNumber", number, "sequence is not numeric")
	}
	return seq, nil
}

// NextEntryNumber returns the number following maxExisting, or the first number of
// the month when maxExisting is empty.
func NextEntryNumber(prefix, maxExisting string) (string, error) {
	s := NewSequencer(map[string]string{prefix: maxExisting})
	return s.Next(prefix)
}

// Sequencer hands out consecutive entry numbers per prefix after a single lookup
// of the current maximum. It is not safe for concurrent use; callers hold it inside
// the unit of work that serializes numbering.
type Sequencer struct {
	next map[string]int
	seed map[string]string
}

// NewSequencer creates a Sequencer from the maximum existing number per prefix.
// Missing or empty entries start at 0001.
func NewSequencer(maxNumbers map[string]string) *Sequencer {
	return &Sequencer{next: make(map[string]int), seed: maxNumbers}
}

// Next returns the next number for prefix.
func (s *Sequencer) Next(prefix string) (string, error) {
	seq, ok := s.next[prefix]
	if !ok {
		seq = 1
		if highest := s.seed[prefix]; highest != "" {
			last, err := ParseSequence(prefix, highest)
			if err != nil {
				return "", err
			}
			seq = last + 1
		}
	}
	if seq > maxSequence {
		return "", &apperrors.ConflictError{
			Resource: "entryNumber",
			Message:  fmt.Sprintf("sequence for %s exhausted after %d entries", prefix, maxSequence),
		}
	}
	s.next[prefix] = seq + 1
	return FormatEntryNumber(prefix, seq), nil
}
