// Package pagesearch provides a dynamic search and pagination engine for the
// member/team dataset on top of GORM or plain SQL.
//
// Overview
//
// pagesearch answers two questions for a sparse FilterCondition:
//   - Search: every member matching the condition, left-joined with its team.
//   - SearchPage: one LIMIT/OFFSET window of the same result plus the total
//     number of matches.
//
// Key concepts
//   - Predicates: the conjunction of filters that are actually present in the
//     condition. Absent or blank fields add nothing to the query.
//   - Store: the storage collaborator that executes content and count queries.
//     GORMStore and sqlxstore.Store are the bundled implementations.
//   - Executor: composes predicates, pages and the count strategy. The count
//     query is skipped when the first page is short, since the page itself
//     already holds every match.
//
// Ordering is deterministic: the member id is always the final sort column.
package pagesearch
