// Package service contains the business logic.
//
// It sits between the handler and repository layers. It receives
// validated data from the handler, enforces authorization rules, and
// calls repository methods to interact with the data. Each service
// depends on small consumer-side store interfaces rather than concrete
// repositories, so tests can substitute fakes.
package service
