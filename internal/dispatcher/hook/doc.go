// Package hook provides pre/post dispatch hooks for the dispatcher.
//
// Hooks intercept every dispatch, nested ones included, for logging,
// validation and other cross-cutting concerns.
//
//   - PreDispatchHook runs before the handler chain and can cancel the
//     command. A cancelled command is reported unhandled.
//   - PostDispatchHook runs after the chain and can inspect or modify the
//     result.
//
// # Priority System
//
// Pre-hooks run from highest to lowest priority. Post-hooks run from lowest
// to highest, so that high priority hooks see the final result.
//
//	PriorityAudit      = 1000
//	PriorityValidation = 800
//	PriorityTiming     = 100
package hook
