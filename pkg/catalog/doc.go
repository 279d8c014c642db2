// Package catalog is the item registry: the static, ordered table of
// installable items and the purely visual groups that nest them.
//
// # Nodes
//
// A catalog holds two kinds of [Node]: [Item] (installable, with optional
// prerequisites, alias and description) and [Group] (a menu header with no
// install meaning). Both share one identity space and are addressed with a
// [Ref], a tagged pair of [Kind] and identity. An item may also act as the
// header of a group; [GroupRef] on such an item addresses its members.
//
// # Validation
//
// [New] enforces the catalog invariants once at startup:
//
//   - identities are unique and valid CLI tokens
//   - aliases never shadow another identity
//   - group membership forms a forest
//   - requires names existing items, is acyclic, and prerequisites are
//     declared before their dependents
//
// # Tree Queries
//
// [Registry.Descendants] and [Registry.Ancestors] are pure views used by the
// interactive menu to cascade checkbox state.
//
// # Files
//
// Catalogs are TOML documents with an ordered array of [[entry]] tables.
// [Default] parses the catalog embedded in the binary; [Load] reads one from
// disk.
package catalog
