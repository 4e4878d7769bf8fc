// Package country resolves country codes and names against a static ISO 3166-1 table.
package country
