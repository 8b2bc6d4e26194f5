/*
Package coin describes token amounts. A Coin is a non-negative integer
amount of the smallest indivisible unit of a token, tagged with the token
ticker. All arithmetic is checked: overflow and underflow are reported as
errors and never wrap around.
*/
package coin
