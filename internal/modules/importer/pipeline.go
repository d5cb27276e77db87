package importer

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/aristath/ledgerfolio/internal/domain"
	"github.com/aristath/ledgerfolio/internal/modules/accounts"
)

// Required CSV columns, matched case-insensitively against the header.
var requiredColumns = []string{
	"name", "type", "quantity", "purchase price", "current price", "purchase date",
}

// RowError attributes one failure to a 1-based data row (header
// excluded).
type RowError struct {
	Row   int    `json:"row"`
	Error string `json:"error"`
}

// Result is the outcome of one import call. Partial success is the
// intended behavior: committed rows stay committed even when later rows
// fail. The caller decides UI messaging from these fields.
type Result struct {
	ImportedCount int        `json:"importedCount"`
	SkippedCount  int        `json:"skippedCount"`
	Success       bool       `json:"success"`
	Errors        []RowError `json:"errors"`
}

// HeaderError is the single all-or-nothing failure mode: a header
// missing required columns fails the batch before any row is processed.
type HeaderError struct {
	Missing []string
}

func (e *HeaderError) Error() string {
	return fmt.Sprintf("header is missing required columns: %s", strings.Join(e.Missing, ", "))
}

// Importer runs the bulk ingestion pipeline: per row, normalize the
// date, validate the fields, match the account, then commit. Rows are
// processed sequentially so error reports carry reproducible row
// numbers.
type Importer struct {
	positions domain.PositionRepository
	accounts  domain.AccountRepository
	log       zerolog.Logger
}

// NewImporter creates a new importer
func NewImporter(positions domain.PositionRepository, accountRepo domain.AccountRepository, log zerolog.Logger) *Importer {
	return &Importer{
		positions: positions,
		accounts:  accountRepo,
		log:       log.With().Str("service", "importer").Logger(),
	}
}

// Import ingests raw CSV text for one user. A row's failure never
// aborts the batch; each committed row is an independent insert.
func (i *Importer) Import(ctx context.Context, userID, text string) (Result, error) {
	reader := csv.NewReader(strings.NewReader(text))
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if err != nil {
		return Result{}, fmt.Errorf("failed to read header: %w", err)
	}

	columns := mapColumns(header)
	if missing := missingColumns(columns); len(missing) > 0 {
		return Result{}, &HeaderError{Missing: missing}
	}

	knownAccounts, err := i.accounts.ListByUser(ctx, userID)
	if err != nil {
		return Result{}, fmt.Errorf("failed to load accounts: %w", err)
	}

	result := Result{Errors: []RowError{}}
	rowNum := 0

	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// The reader's position is unreliable after a parse error,
			// so the remainder of the file cannot be attributed to rows.
			rowNum++
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: fmt.Sprintf("malformed CSV row: %v", err)})
			result.SkippedCount++
			break
		}
		rowNum++

		position, rowErr := i.buildPosition(userID, record, columns, knownAccounts)
		if rowErr != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: rowErr.Error()})
			result.SkippedCount++
			continue
		}

		if err := i.positions.Create(ctx, position); err != nil {
			result.Errors = append(result.Errors, RowError{Row: rowNum, Error: fmt.Sprintf("failed to save position: %v", err)})
			result.SkippedCount++
			continue
		}

		result.ImportedCount++
	}

	result.Success = len(result.Errors) == 0

	i.log.Info().
		Str("user_id", userID).
		Int("imported", result.ImportedCount).
		Int("skipped", result.SkippedCount).
		Msg("Import finished")

	return result, nil
}

// buildPosition turns one CSV record into a position candidate, running
// the date normalizer, the row validator and the account matcher.
func (i *Importer) buildPosition(
	userID string,
	record []string,
	columns map[string]int,
	knownAccounts []domain.Account,
) (*domain.Position, error) {
	field := func(name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	category, err := domain.ParseCategory(field("type"))
	if err != nil {
		return nil, err
	}

	acquiredOn, err := NormalizeDate(field("purchase date"))
	if err != nil {
		return nil, err
	}

	quantity := decimal.Zero
	if raw := field("quantity"); raw != "" {
		if quantity, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("invalid quantity %q", raw)
		}
	} else if category.IsLumpSum() {
		quantity = decimal.NewFromInt(1)
	}

	costBasis := decimal.Zero
	if raw := field("purchase price"); raw != "" {
		if costBasis, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("invalid purchase price %q", raw)
		}
	}

	// A blank current price falls back to the purchase price, which is
	// the natural reading for lump-sum rows.
	currentPrice := costBasis
	if raw := field("current price"); raw != "" {
		if currentPrice, err = decimal.NewFromString(raw); err != nil {
			return nil, fmt.Errorf("invalid current price %q", raw)
		}
	}

	position := &domain.Position{
		UserID:              userID,
		Name:                field("name"),
		Category:            category,
		Symbol:              field("symbol"),
		Quantity:            quantity,
		CostBasisPerUnit:    costBasis,
		CurrentPricePerUnit: currentPrice,
		AcquiredOn:          acquiredOn,
		Notes:               field("notes"),
	}

	if raw := strings.TrimSuffix(field("interest rate"), "%"); raw != "" {
		rate, err := decimal.NewFromString(strings.TrimSpace(raw))
		if err != nil {
			return nil, fmt.Errorf("invalid interest rate %q", raw)
		}
		position.InterestRate = &rate
	}

	if raw := field("maturity date"); raw != "" {
		maturity, err := NormalizeDate(raw)
		if err != nil {
			return nil, err
		}
		position.MaturityDate = &maturity
	}

	position.NormalizeQuantity()

	if violations := ValidatePosition(*position); len(violations) > 0 {
		return nil, &ValidationError{Violations: violations}
	}

	// An unmatched or absent account label leaves the position
	// unlinked; it is never a row error.
	label := field("account")
	if label == "" {
		label = field("bank name")
	}
	position.AccountID = accounts.Match(label, knownAccounts)

	return position, nil
}

func mapColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for idx, name := range header {
		key := strings.ToLower(strings.TrimSpace(name))
		if _, seen := columns[key]; key != "" && !seen {
			columns[key] = idx
		}
	}
	return columns
}

func missingColumns(columns map[string]int) []string {
	var missing []string
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}
