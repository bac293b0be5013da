package utils

import (
	"fmt"
	"time"
)

// Layouts the reservations API has been observed to use for data_venda.
var saleDateLayouts = []string{
	"2006-01-02",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"02/01/2006",
}

// ParseSaleDate parses an upstream sale date, trying each known layout.
func ParseSaleDate(dateStr string) (time.Time, error) {
	for _, layout := range saleDateLayouts {
		if t, err := time.Parse(layout, dateStr); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized sale date %q", dateStr)
}
