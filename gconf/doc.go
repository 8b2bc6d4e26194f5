/*
Package gconf implements in-database configuration singletons.

Each extension owns at most one configuration object, stored under a key
derived from the extension name. A configuration is loaded from the genesis
file and can later be replaced only by the owner it declares.
*/
package gconf
