// Package kernel holds the primitives every marketplace aggregate shares:
// the UUID identifier value object and the Clock used to stamp lifecycle events.
package kernel
