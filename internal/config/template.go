package config

// DefaultConfigTOML is the annotated configuration template written by
// `dupescope init`.
const DefaultConfigTOML = `# dupescope configuration
# Values here override the built-in defaults; command-line flags override both.

[grouping]
# Similarity threshold as a percentage (0-100). Pairs scoring below the
# threshold are never grouped together.
threshold = 70

# Similarity algorithm: levenshtein, jaro, token, substring, auto.
# "auto" blends the other metrics based on the structure of the names.
algorithm = "auto"

# Clustering strategy:
#   name    - filename-only grouping with transitive closure
#   content - content-aware grouping using file hashes and sizes
strategy = "name"

# Compare names case-sensitively.
case_sensitive = false

# Minimum number of files per group (name strategy only).
min_group_size = 2

[input]
# Recurse into subdirectories during discovery.
recursive = true

# Glob patterns applied during discovery. Both the base name and the full
# path are matched, and ** is supported.
include_patterns = []
exclude_patterns = []

[output]
# Output format: text, json, yaml, csv.
format = "text"

# List files that ended up in no group.
show_ungrouped = true
`
