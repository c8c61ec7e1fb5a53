// Package catalog provides read-only access to a rekordbox SQLite database.
// It exposes the three queries the export engine needs: the flat collection
// hierarchy, the set of smart (rule-evaluated) playlist ids, and the ordered
// track rows of a playlist. Nothing here ever writes to the database.
package catalog
