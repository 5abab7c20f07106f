// Package student defines the uniform record interface shared by every
// institution's student representation, together with the closed set of
// concrete variants that implement it.
//
// Roll numbers and course codes differ in type between institutions. Each
// variant fixes those two types once, at construction, and the Student
// interface only ever exposes their text renderings. Everything downstream
// (the course index, the sorted views, the query engine) works on text and
// never needs to know which institution a record came from.
package student
