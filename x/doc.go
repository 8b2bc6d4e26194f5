/*
Package x contains the building blocks shared by all extensions. The
extensions themselves live in subpackages.
*/
package x
