// Package shipper models a delivery rider's availability. A shipper carries
// at most one order: accepting a pickup makes them BUSY and delivering makes
// them AVAILABLE again.
package shipper
