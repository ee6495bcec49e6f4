/*
envterpolate interpolates JSON and YAML string values with variables from env
files.

# Usage

	envterpolate [flags] document|directory

# Flags

	    --debug                enable debug logging
	-e, --env string           env file with variables to substitute (default ".env")
	    --glob string          interpolate all documents matching this pattern inside the directory argument
	-h, --help                 help for envterpolate
	    --indent int           indentation; 0 writes compact JSON (default 2)
	    --missing string       what to do about unresolved placeholders: error, keep, or empty (default "error")
	    --only strings         interpolate only string values with dotted paths matching glob pattern(s)
	-o, --out string           output file (or directory with --glob), defaults to stdout
	-v, --version              version for envterpolate

All flags can also be set using environment variables with an “ENVTERPOLATE_”
prefix, such as ENVTERPOLATE_ENV=prod.env or ENVTERPOLATE_ONLY="poem.** meta.*".
*/
package main
