package envvars

import "fmt"

// ConfigurationError indicates two different special keywords in one
// precision override list. The process must not proceed with ambiguous
// settings, so callers surface this immediately.
type ConfigurationError struct {
	First  SpecialPrecisionSetting
	Second SpecialPrecisionSetting
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("multiple special settings found in precision list: cannot set both %s and %s",
		e.First, e.Second)
}
