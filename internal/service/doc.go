// Package service holds the catalog's business rules.
//
// Handlers call services; services call the repository interfaces. Every
// operation that reads before it writes runs inside repository.Transaction so
// its preconditions and its writes form one unit of work.
package service
