/*
Package weave defines the interfaces shared by every part of the
application: storage, messages, handlers, decorators, authentication
conditions and the values carried in the request context.

We pass context through context.Context between app, middleware, and
handlers. For every value T that we want to support in Context there are two
functions:

	WithXYZ(Context, T) Context
	XYZ(Context) (val T, ok bool)

WithXYZ panics if the value was previously set, so that lower-level modules
cannot overwrite it (eg. block time, chain ID).
*/
package weave
