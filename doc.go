/*
Package envterpolate interpolates the string values of JSON and YAML documents
with variables from env files.

Given a document, such as a “package.json”:

	{
	  "poem": {
	    "roses": "are {ROSES}",
	    "violets": "are {VIOLETS}"
	  }
	}

and an env file:

	ROSES=red
	VIOLETS=blue

an [Interpolator] returns the document with all “{name}” placeholders in its
string values replaced:

	{
	  "poem": {
	    "roses": "are red",
	    "violets": "are blue"
	  }
	}

Interpolation can be restricted to only those string values whose dotted
paths, such as “poem.roses”, match glob patterns; please see the
[github.com/thediveo/envterpolate/interpolate] package for details.

The document and the env file are loaded concurrently. Documents are either
JSON (with optional comments and trailing commas) or, based on their “.yaml”
or “.yml” file extensions, YAML. The order of keys is always kept.
*/
package envterpolate
