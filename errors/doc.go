/*
Package errors implements the coded error taxonomy used by every extension.

Root errors are declared once with Register and carry a unique code. Runtime
errors are created by wrapping a root error, so that callers can classify any
failure with the Is method no matter how many layers of context were added:

	if errors.ErrNotFound.Is(err) {
		...
	}

Extensions that need their own root errors register them in their package
(see x/taxreward for an example). Codes below 100 are reserved for this
package.

A stack trace is attached at the innermost Wrap call. Use %+v when printing
an error to see it.
*/
package errors
