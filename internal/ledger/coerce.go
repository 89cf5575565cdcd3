package ledger

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"fjacquet/spend-insights/internal/currencyutils"
	"fjacquet/spend-insights/internal/dateutils"
	"fjacquet/spend-insights/internal/logging"
	"fjacquet/spend-insights/internal/models"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

// Excel serial day numbers accepted as dates (1900-01-01 .. 9999-12-31).
const (
	minExcelSerial = 1
	maxExcelSerial = 2958465
)

// CoerceResult holds the typed transactions and the number of rows dropped
// because their date or amount could not be resolved.
type CoerceResult struct {
	Transactions []models.Transaction
	Dropped      int
}

// Coerce converts normalized records into transactions, in input order. Rows with
// an unparseable date or amount are dropped and logged at debug level.
func Coerce(table *Table, logger logging.Logger) CoerceResult {
	logger = logging.OrNop(logger)
	result := CoerceResult{Transactions: make([]models.Transaction, 0, table.Len())}
	if table == nil {
		return result
	}

	for i, record := range table.Records {
		tx, err := toTransaction(record)
		if err != nil {
			result.Dropped++
			logger.Debug("Dropping ledger row",
				logging.F(logging.FieldRow, i+1),
				logging.F(logging.FieldReason, err.Error()))
			continue
		}
		result.Transactions = append(result.Transactions, tx)
	}

	if result.Dropped > 0 {
		logger.Info("Dropped rows with unparseable date or amount",
			logging.F(logging.FieldDropped, result.Dropped),
			logging.F(logging.FieldCount, len(result.Transactions)))
	}

	return result
}

func toTransaction(record Record) (models.Transaction, error) {
	date, err := ParseDateValue(record[models.ColumnDate])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("date: %w", err)
	}
	amount, err := ParseAmountValue(record[models.ColumnAmount])
	if err != nil {
		return models.Transaction{}, fmt.Errorf("amount: %w", err)
	}

	return models.Transaction{
		Date:        date,
		CardNumber:  TextValue(record[models.ColumnCardNumber]),
		Amount:      amount,
		Category:    TextValue(record[models.ColumnCategory]),
		Description: TextValue(record[models.ColumnDescription]),
	}, nil
}

// ParseDateValue resolves a date cell: time.Time, a date string in one of the
// supported layouts, or an Excel serial day number.
func ParseDateValue(value any) (time.Time, error) {
	switch v := value.(type) {
	case nil:
		return time.Time{}, fmt.Errorf("missing value")
	case time.Time:
		if v.IsZero() {
			return time.Time{}, fmt.Errorf("zero time")
		}
		return v, nil
	case *time.Time:
		if v == nil || v.IsZero() {
			return time.Time{}, fmt.Errorf("missing value")
		}
		return *v, nil
	case float64:
		return excelSerialToTime(v)
	case int:
		return excelSerialToTime(float64(v))
	case int64:
		return excelSerialToTime(float64(v))
	case json.Number:
		serial, err := v.Float64()
		if err != nil {
			return time.Time{}, fmt.Errorf("unrecognised date %q", v.String())
		}
		return excelSerialToTime(serial)
	case string:
		s := strings.TrimSpace(v)
		if t, _, err := dateutils.ParseDate(s); err == nil {
			return t, nil
		}
		if serial, err := strconv.ParseFloat(s, 64); err == nil {
			return excelSerialToTime(serial)
		}
		return time.Time{}, fmt.Errorf("unrecognised date %q", v)
	default:
		return time.Time{}, fmt.Errorf("unsupported date value of type %T", value)
	}
}

func excelSerialToTime(serial float64) (time.Time, error) {
	if math.IsNaN(serial) || serial < minExcelSerial || serial > maxExcelSerial {
		return time.Time{}, fmt.Errorf("serial date %v out of range", serial)
	}
	t, err := excelize.ExcelDateToTime(serial, false)
	if err != nil {
		return time.Time{}, err
	}
	// sub-second noise from the float representation
	return t.Round(time.Second), nil
}

// ParseAmountValue resolves an amount cell: numbers, decimal.Decimal or a
// locale-formatted string.
func ParseAmountValue(value any) (decimal.Decimal, error) {
	switch v := value.(type) {
	case nil:
		return decimal.Zero, fmt.Errorf("missing value")
	case decimal.Decimal:
		return v, nil
	case float64:
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return decimal.Zero, fmt.Errorf("not a number")
		}
		return decimal.NewFromFloat(v), nil
	case float32:
		return ParseAmountValue(float64(v))
	case int:
		return decimal.NewFromInt(int64(v)), nil
	case int64:
		return decimal.NewFromInt(v), nil
	case int32:
		return decimal.NewFromInt32(v), nil
	case json.Number:
		return decimal.NewFromString(v.String())
	case string:
		return currencyutils.ParseAmount(v)
	default:
		return decimal.Zero, fmt.Errorf("unsupported amount value of type %T", value)
	}
}

// TextValue renders an optional text cell; nil becomes "".
func TextValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case float64:
		if v == math.Trunc(v) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
		return strconv.FormatFloat(v, 'f', -1, 64)
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}
