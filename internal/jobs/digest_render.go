package jobs

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/outreach-crm/outreach-api/internal/domain"
	"github.com/xuri/excelize/v2"
)

const (
	listDueToday = "due_today"
	listNextDay  = "next_business_day"

	digestSheet = "To-do"
)

var digestColumns = []string{
	"list", "contact", "title", "email", "phone", "account", "products",
	"cadence_days", "last_outreach_date", "last_outreach_method",
	"due_date", "days_overdue", "rollover",
}

// digestRows flattens both lists into one table, due-today first
func digestRows(todo *domain.TodoResponse) [][]string {
	rows := make([][]string, 0, len(todo.DueToday)+len(todo.DueNextBusinessDay))
	for _, item := range todo.DueToday {
		rows = append(rows, digestRow(listDueToday, item))
	}
	for _, item := range todo.DueNextBusinessDay {
		rows = append(rows, digestRow(listNextDay, item))
	}
	return rows
}

func digestRow(list string, item domain.TodoItemDTO) []string {
	lastDate, lastMethod := "", ""
	if item.LastOutreachDate != nil {
		lastDate = *item.LastOutreachDate
	}
	if item.LastOutreachMethod != nil {
		lastMethod = string(*item.LastOutreachMethod)
	}
	return []string{
		list,
		item.ContactName,
		item.Title,
		item.Email,
		item.Phone,
		item.AccountName,
		products(item),
		strconv.Itoa(item.CadenceDays),
		lastDate,
		lastMethod,
		item.DueDate,
		strconv.Itoa(item.DaysOverdue),
		strconv.FormatBool(item.IsRollover),
	}
}

func products(item domain.TodoItemDTO) string {
	names := make([]string, 0, len(item.Opportunities))
	for _, opp := range item.Opportunities {
		names = append(names, opp.Product)
	}
	return strings.Join(names, ", ")
}

// RenderDigestSubject returns the email subject line
func RenderDigestSubject(todo *domain.TodoResponse) string {
	return fmt.Sprintf("Outreach to-do for %s: %d due", todo.Date, len(todo.DueToday))
}

// RenderDigestText renders the plain-text email body
func RenderDigestText(todo *domain.TodoResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Outreach to-do for %s\n\n", todo.Date)

	fmt.Fprintf(&b, "Due today: %d", len(todo.DueToday))
	if todo.RolloverCount > 0 {
		fmt.Fprintf(&b, " (%d rolled over)", todo.RolloverCount)
	}
	b.WriteString("\n")
	if len(todo.DueToday) == 0 {
		b.WriteString("  Nobody is due. Nice work.\n")
	}
	for _, item := range todo.DueToday {
		fmt.Fprintf(&b, "  - %s\n", describe(item, true))
	}

	fmt.Fprintf(&b, "\nDue next business day (%s): %d\n", todo.NextBusinessDay, len(todo.DueNextBusinessDay))
	for _, item := range todo.DueNextBusinessDay {
		fmt.Fprintf(&b, "  - %s\n", describe(item, false))
	}

	return b.String()
}

func describe(item domain.TodoItemDTO, withStatus bool) string {
	line := fmt.Sprintf("%s (%s)", item.ContactName, item.AccountName)
	if p := products(item); p != "" {
		line += " - " + p
	}
	if !withStatus {
		return line
	}

	switch {
	case item.NeverContacted:
		line += " - never contacted"
	case item.LastOutreachDate != nil && item.LastOutreachMethod != nil:
		line += fmt.Sprintf(" - last %s on %s", *item.LastOutreachMethod, *item.LastOutreachDate)
	}
	if item.IsRollover {
		line += fmt.Sprintf(" - due %s, %d business days overdue", item.DueDate, item.DaysOverdue)
	}
	return line
}

// RenderDigestCSV renders both lists as CSV with a header row
func RenderDigestCSV(todo *domain.TodoResponse) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(digestColumns); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	if err := writer.WriteAll(digestRows(todo)); err != nil {
		return nil, fmt.Errorf("failed to write rows: %w", err)
	}

	return buf.Bytes(), nil
}

// RenderDigestWorkbook renders both lists as a single-sheet xlsx workbook
func RenderDigestWorkbook(todo *domain.TodoResponse) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName(f.GetSheetName(0), digestSheet); err != nil {
		return nil, fmt.Errorf("failed to name sheet: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"#E0E0E0"}, Pattern: 1},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create style: %w", err)
	}

	header := make([]interface{}, len(digestColumns))
	for i, col := range digestColumns {
		header[i] = col
	}
	if err := f.SetSheetRow(digestSheet, "A1", &header); err != nil {
		return nil, fmt.Errorf("failed to write header: %w", err)
	}
	lastCol, err := excelize.ColumnNumberToName(len(digestColumns))
	if err != nil {
		return nil, err
	}
	if err := f.SetCellStyle(digestSheet, "A1", lastCol+"1", headerStyle); err != nil {
		return nil, fmt.Errorf("failed to style header: %w", err)
	}

	for i, row := range digestRows(todo) {
		cells := make([]interface{}, len(row))
		for j, v := range row {
			cells[j] = v
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return nil, err
		}
		if err := f.SetSheetRow(digestSheet, cell, &cells); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+2, err)
		}
	}

	if err := f.SetColWidth(digestSheet, "A", lastCol, 18); err != nil {
		return nil, fmt.Errorf("failed to size columns: %w", err)
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("failed to write workbook: %w", err)
	}
	return buf.Bytes(), nil
}
