/*
Package placeholder resolves named “{name}” placeholders in strings from a
flat dictionary of names and values.

	{bond} James {bond}

with a dictionary of “bond” to “Bond.” resolves to

	Bond. James Bond.

There are no expressions, conditionals, or escapes. What happens to
placeholders without a dictionary entry depends on the [MissingPolicy] of a
[Braces] resolver.
*/
package placeholder
