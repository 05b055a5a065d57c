package main

import (
	"github.com/spf13/pflag"
)

// aliasNormalizer lets kind-specific flag names stand in for the generic
// ones, e.g. --cuisine for --category.
func aliasNormalizer(aliases map[string]string) func(*pflag.FlagSet, string) pflag.NormalizedName {
	return func(_ *pflag.FlagSet, name string) pflag.NormalizedName {
		if canonical, ok := aliases[name]; ok {
			return pflag.NormalizedName(canonical)
		}
		return pflag.NormalizedName(name)
	}
}
