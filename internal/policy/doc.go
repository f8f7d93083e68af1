// Package policy decides whether an authenticated actor may perform an action
// on the notice board.
//
// Rules:
//   - create_user: admins only
//   - list_notices: any authenticated actor
//   - create_notice: admins and teachers
//   - delete_notice: admins, or the notice author
//
// Decide is pure. Unknown actions and unknown roles are denied.
package policy
