package domain

import "fmt"

// Currency renders cents in the single fixed display format the app uses.
func Currency(cents int64) string {
	return fmt.Sprintf("₹%d.%02d", cents/100, cents%100)
}
