// Package catalog defines the value-object data model for the conveyor
// engineering catalog: belts, material profiles, pulleys, vendor gearmotor
// performance points, and tracking recommendation inputs/outputs.
//
// All types are plain value objects with no identity beyond their natural
// key (catalog_key, part_number). They carry no behavior besides validation
// and are safely copyable and comparable by value. The decision engines in
// internal/engine never mutate them.
//
// Validation functions (ValidateMaterialProfile, ValidatePulleyCatalogItem,
// ValidateGearmotorSelectionInputs) accumulate ALL violations into a list of
// human-readable strings rather than stopping at the first, so an admin
// screen can display every problem at once.
package catalog
