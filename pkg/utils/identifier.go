package utils

import "strings"

// QuoteIdentifier adds double quotes around a CQL identifier, handling
// qualified identifiers. Cassandra folds unquoted identifiers to lower case,
// so quoting each part keeps keyspace and table names exactly as given.
//
// Examples:
//   - "tiles" -> "\"tiles\""
//   - "lcmap.tiles" -> "\"lcmap\".\"tiles\""
//   - "\"tiles\"" -> "\"tiles\"" (already quoted, not double-quoted)
//   - "" -> ""
//
// This function is used for consistent identifier formatting in generated
// CQL statements.
func QuoteIdentifier(name string) string {
	if name == "" {
		return ""
	}

	// A single already-quoted identifier (possibly containing dots) is
	// returned as-is.
	if len(name) >= 2 && name[0] == '"' && name[len(name)-1] == '"' {
		inner := name[1 : len(name)-1]
		if !strings.Contains(inner, `"`) {
			return name
		}
	}

	// Handle keyspace.table format by quoting each part.
	parts := strings.Split(name, ".")
	for i, part := range parts {
		if len(part) >= 2 && part[0] == '"' && part[len(part)-1] == '"' {
			continue
		}
		parts[i] = `"` + part + `"`
	}
	return strings.Join(parts, ".")
}

// QualifiedName formats a keyspace-qualified name with proper quoting.
// If keyspace is empty, only the name is quoted.
//
// Examples:
//   - ("lcmap", "tiles") -> "\"lcmap\".\"tiles\""
//   - ("", "tiles") -> "\"tiles\""
//
// This is commonly used for table names that may include a keyspace prefix,
// allowing sessions to run without a bound keyspace.
func QualifiedName(keyspace, name string) string {
	if keyspace != "" {
		return QuoteIdentifier(keyspace) + "." + QuoteIdentifier(name)
	}
	return QuoteIdentifier(name)
}

// IsQuoted checks if a string is already wrapped in double quotes.
//
// Examples:
//   - "\"tiles\"" -> true
//   - "tiles" -> false
//   - "\"lcmap\".\"tiles\"" -> false (qualified name, not a single quoted identifier)
//   - "" -> false
func IsQuoted(s string) bool {
	return len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' && !strings.Contains(s[1:len(s)-1], `"`)
}

// StripQuotes removes double quotes from an identifier if present.
//
// Examples:
//   - "\"tiles\"" -> "tiles"
//   - "tiles" -> "tiles"
//   - "\"lcmap\".\"tiles\"" -> "lcmap.tiles"
//   - "" -> ""
func StripQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, "")
}
