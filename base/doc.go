/*

Package base provides base data structures and functions for recflow.

The base data structures and functions include:

* Identifier Index

* Random Generator

* Sparse Data Structures

*/
package base
