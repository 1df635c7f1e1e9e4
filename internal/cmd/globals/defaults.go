package globals

// Defaults carries configured default values from the application
// config into command flag setup.
type Defaults struct {
	MatchThreshold   int
	ExcludePool      bool
	OutputDir        string
	InvoiceEncoding  string
	InvoiceSeparator string
	InvoiceMetaRows  int
}
