// Package solutions contains reference solutions for a set of classic
// problems. Importing the package registers them with the harness under the
// names listed by "tcio solutions".
package solutions
