package report

import "github.com/pidim-smart/report-dashboard/pkg/models/domain"

// Field names used by the upstream datasets beyond the branch name.
const (
	loanTypeField    = "Types of Loan"
	loanCountField   = "# of Loan"
	loanAmountField  = "Amount of Loan"
	poultryTypeField = "Types of Poultry Rearing"
	poultryMEsField  = "# of MEs"
	poultryBirdField = "# of Birds"
	grantsMEsField   = "Number on MEs"
	grantsAmtField   = "Amounts of Grants"
	slNoField        = "Sl No"
)

// LoanColumns returns the static column set of the loan disbursement report.
func LoanColumns() []domain.Column {
	return []domain.Column{
		{Key: slNoField, Label: "Sl No"},
		{Key: domain.BranchNameField, Label: "Branch Name"},
		{Key: loanTypeField, Label: "Types of Loan"},
		{Key: loanCountField, Label: "# of Loan", Summable: true, Format: FormatNumber},
		{Key: loanAmountField, Label: "Amount of Loan", Summable: true, Format: FormatNumber},
	}
}

// PoultryColumns returns the static column set of the poultry rearing report.
func PoultryColumns() []domain.Column {
	return []domain.Column{
		{Key: slNoField, Label: "Sl No"},
		{Key: domain.BranchNameField, Label: "Branch Name"},
		{Key: poultryTypeField, Label: "Types of Poultry Rearing"},
		{Key: poultryMEsField, Label: "# of MEs", Summable: true, Format: FormatNumber},
		{Key: poultryBirdField, Label: "# of Birds", Summable: true, Format: FormatNumber},
	}
}

// GrantsColumns returns the static column set of the grants report.
func GrantsColumns() []domain.Column {
	return []domain.Column{
		{Key: slNoField, Label: "Sl No"},
		{Key: domain.BranchNameField, Label: "Branch Name"},
		{Key: grantsMEsField, Label: "Number on MEs", Summable: true, Format: FormatNumber},
		{Key: grantsAmtField, Label: "Amounts of Grants", Summable: true, Format: FormatNumber},
	}
}

// Columns returns the column set for a named report.
func Columns(name domain.ReportName) []domain.Column {
	switch name {
	case domain.ReportPoultry:
		return PoultryColumns()
	case domain.ReportGrants:
		return GrantsColumns()
	default:
		return LoanColumns()
	}
}

// Title returns the display title for a named report.
func Title(name domain.ReportName) string {
	switch name {
	case domain.ReportPoultry:
		return "Poultry Rearing"
	case domain.ReportGrants:
		return "Grants"
	default:
		return "Loan Disbursement"
	}
}
