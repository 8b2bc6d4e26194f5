// Package utils provides decorators shared by all applications.
package utils
