/*
Package weavetest provides fakes and helpers for testing handlers,
decorators and extensions without a running application.
*/
package weavetest
