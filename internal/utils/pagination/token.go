package pagination

import (
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/SscSPs/ledger_engine/internal/core/domain"
)

const dateFormat = "2006-01-02"

// EncodeToken creates a base64 encoded cursor from the last entry of a page.
// Entries are ordered by entry date, then entry number.
func EncodeToken(entryDate time.Time, entryNumber string) string {
	tokenStr := fmt.Sprintf("%s|%s", entryDate.Format(dateFormat), entryNumber)
	return base64.URLEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeToken parses the base64 encoded cursor back into entry date and number.
func DecodeToken(token string) (time.Time, string, error) {
	decodedBytes, err := base64.URLEncoding.DecodeString(token)
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}
	parts := strings.SplitN(string(decodedBytes), "|", 2)
	if len(parts) != 2 || parts[1] == "" {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (split)")
	}

	entryDate, err := time.Parse(dateFormat, parts[0])
	if err != nil {
		return time.Time{}, "", fmt.Errorf("invalid pagination token format (entry date parse): %w", err)
	}
	return entryDate, parts[1], nil
}

// after reports whether e sorts strictly after the cursor position.
func after(e domain.JournalEntry, date time.Time, number string) bool {
	d := domain.TruncateDate(e.EntryDate)
	if !d.Equal(date) {
		return d.After(date)
	}
	return e.EntryNumber > number
}

// Page slices an ordered entry list. An empty token starts from the beginning; the
// returned token is empty on the last page. limit <= 0 returns everything after the cursor.
func Page(entries []domain.JournalEntry, token string, limit int) ([]domain.JournalEntry, string, error) {
	start := 0
	if token != "" {
		date, number, err := DecodeToken(token)
		if err != nil {
			return nil, "", err
		}
		start = len(entries)
		for i, e := range entries {
			if after(e, date, number) {
				start = i
				break
			}
		}
	}

	rest := entries[start:]
	if limit <= 0 || len(rest) <= limit {
		return rest, "", nil
	}
	page := rest[:limit]
	last := page[len(page)-1]
	return page, EncodeToken(last.EntryDate, last.EntryNumber), nil
}
