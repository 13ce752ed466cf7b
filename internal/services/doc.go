// Package services holds the business operations behind the command table:
// account registration and login, owner-scoped banner management with an
// audit trail, and the administrator views over flagged accounts.
//
// Every service shares one *sql.DB and vends repositories through a
// repomanager.RepositoryManager, binding them either to the pool or to a
// transaction when a mutation must be recorded atomically with its audit
// entry.
package services
