// Package errs provides the error vocabulary shared by the marketplace core.
//
// Two families live here:
//   - value errors (ValueIsRequiredError, ValueIsInvalidError, ValueIsOutOfRangeError,
//     ObjectNotFoundError) raised by constructors and repositories;
//   - BusinessError, a coded error with a Kind (NotFound, Forbidden, Conflict,
//     BadRequest) that the HTTP layer translates into a status code.
//
// Every error unwraps to a sentinel so callers classify with errors.Is and
// never by message.
package errs
