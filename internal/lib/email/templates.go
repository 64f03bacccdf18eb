package email

// Template is a string-based enum naming email templates.
type Template string

const (
	// TemplateWelcome corresponds to templates/welcome.html
	TemplateWelcome Template = "welcome"

	// TemplateReceipt corresponds to templates/receipt.html
	TemplateReceipt Template = "receipt"
)
