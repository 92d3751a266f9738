package utils

import "time"

// ParseDate aceita YYYY-MM-DD ou RFC3339. Retorna nil para string vazia.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	if date, err := time.Parse(time.RFC3339, dateStr); err == nil {
		return &date, nil
	}

	date, err := time.Parse(time.DateOnly, dateStr)
	if err != nil {
		return nil, err
	}

	return &date, nil
}

// EndOfDay devolve o último instante do dia de t
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}
