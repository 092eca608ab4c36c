package export

// Config holds configuration for report generation.
type Config struct {
	// BranchName appears in the report header.
	BranchName string `mapstructure:"branch_name" default:""`
	// CountedBy names the operator in the report header.
	CountedBy string `mapstructure:"counted_by" default:""`
	// Delimiter separates CSV fields. Some spreadsheet locales want
	// semicolons.
	Delimiter string `mapstructure:"delimiter" default:","`
}

// DelimiterRune returns the configured delimiter, defaulting to comma.
func (c Config) DelimiterRune() rune {
	for _, r := range c.Delimiter {
		return r
	}
	return ','
}
