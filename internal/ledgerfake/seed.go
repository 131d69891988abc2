package ledgerfake

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// SeedMinimal loads the two customers, two accounts and one merchant the
// dashboard expects out of the box. It is idempotent.
func SeedMinimal(s *Store) error {
	s.PutCustomer(Customer{ID: "C001", Name: "Alice"})
	s.PutCustomer(Customer{ID: "C002", Name: "Bob"})
	s.PutAccount(Account{AccountNo: "A-1002", Type: "checking", Currency: "USD", Status: "active"})
	s.PutAccount(Account{AccountNo: "A-1003", Type: "savings", Currency: "USD", Status: "active"})
	s.PutMerchant(Merchant{MerchantID: "M-Grocery", Name: "Fresh Grocery", MCC: "5411"})

	return errors.Join(s.Own("C001", "A-1002"), s.Own("C002", "A-1003"))
}

// SeedStats counts what LoadCSV read.
type SeedStats struct {
	TotalLines int64
	Applied    int64
	Failed     int64
}

// LoadCSV applies seed records from r. The first column names the record:
//
//	customer,<id>,<name>
//	account,<accountNo>,<type>,<currency>,<status>
//	merchant,<merchantId>,<name>,<mcc>
//	owns,<customerId>,<accountNo>
//	transfer,<txId>,<from>,<to>,<amount>,<currency>,<channel>[,<createdAt>]
//	pay,<txId>,<from>,<merchantId>,<amount>,<currency>,<channel>[,<createdAt>]
//
// Lines starting with # are ignored. A bad record is logged and skipped; a
// malformed file stops the load.
func LoadCSV(ctx context.Context, s *Store, r io.Reader) (SeedStats, error) {
	reader := csv.NewReader(r)
	reader.Comment = '#'
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	var stats SeedStats
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			stats.Failed++
			slog.WarnContext(ctx, "failed to read seed line", "error", err)
			return stats, err
		}

		stats.TotalLines++
		if err := applyRecord(s, record); err != nil {
			stats.Failed++
			slog.WarnContext(ctx, "failed to apply seed record", "line", stats.TotalLines, "error", err)
			continue
		}
		stats.Applied++
	}

	return stats, nil
}

func applyRecord(s *Store, record []string) error {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	kind := strings.ToLower(record[0])
	switch kind {
	case "customer":
		if err := expectFields(kind, record, 3); err != nil {
			return err
		}
		s.PutCustomer(Customer{ID: record[1], Name: record[2]})
	case "account":
		if err := expectFields(kind, record, 5); err != nil {
			return err
		}
		s.PutAccount(Account{AccountNo: record[1], Type: record[2], Currency: strings.ToUpper(record[3]), Status: record[4]})
	case "merchant":
		if err := expectFields(kind, record, 4); err != nil {
			return err
		}
		s.PutMerchant(Merchant{MerchantID: record[1], Name: record[2], MCC: record[3]})
	case "owns":
		if err := expectFields(kind, record, 3); err != nil {
			return err
		}
		return s.Own(record[1], record[2])
	case "transfer", "pay":
		return applyMovement(s, kind, record)
	default:
		return fmt.Errorf("unknown record kind %q", record[0])
	}

	return nil
}

func applyMovement(s *Store, kind string, record []string) error {
	if len(record) != 7 && len(record) != 8 {
		return fmt.Errorf("%s: expected 7 or 8 fields, got %d", kind, len(record))
	}

	amount, err := decimal.NewFromString(record[4])
	if err != nil || amount.IsNegative() {
		return fmt.Errorf("%s: invalid amount %q", kind, record[4])
	}

	var createdAt time.Time
	if len(record) == 8 && record[7] != "" {
		createdAt, err = parseTimestamp(record[7])
		if err != nil {
			return fmt.Errorf("%s: %w", kind, err)
		}
	}

	if kind == "transfer" {
		return s.Transfer(TransferInput{
			TxID:      record[1],
			From:      record[2],
			To:        record[3],
			Amount:    amount,
			Currency:  strings.ToUpper(record[5]),
			Channel:   record[6],
			CreatedAt: createdAt,
		})
	}

	return s.Pay(PayInput{
		TxID:       record[1],
		From:       record[2],
		MerchantID: record[3],
		Amount:     amount,
		Currency:   strings.ToUpper(record[5]),
		Channel:    record[6],
		CreatedAt:  createdAt,
	})
}

func expectFields(kind string, record []string, n int) error {
	if len(record) != n {
		return fmt.Errorf("%s: expected %d fields, got %d", kind, n, len(record))
	}
	return nil
}

var timestampLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseTimestamp accepts ISO-8601 with or without an offset. A missing offset
// means UTC.
func parseTimestamp(v string) (time.Time, error) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, v); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid timestamp %q", v)
}
