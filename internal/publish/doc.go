// Package publish hands the result of a run to the outside world: it can
// commit the files a run changed to the enclosing git work tree and announce
// the run report on a NATS subject. Both are optional.
package publish
