// Package migrations holds the schema migrations. Each file registers itself
// from init(); importing the package is enough to make them known to
// migration.New(...).Run().
package migrations
