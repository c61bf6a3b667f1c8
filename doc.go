// Package gitz loads, validates and upgrades git-z configuration files. The
// configuration format is versioned, and older files are upgraded in place
// while keeping their comments and layout as much as possible.
//
// The configuration lives in `git-z.toml` at the root of the repository.
//
// # Usage
//
// Use gitz.Locate to find the file, then gitz.Load to read it:
//
//	path, err := gitz.Locate(ctx, ".")
//	if err != nil {
//		return err
//	}
//	loaded, err := gitz.Load(path)
//	if err != nil {
//		return err
//	}
//	for _, t := range loaded.Config.Types {
//		fmt.Println(t.Name, t.Description)
//	}
//
// Load accepts every known version. loaded.Config is always in the latest
// format, upgraded in memory, and loaded.Outdated tells if the file itself
// should be upgraded.
//
// # Versions
//
// The known versions are, oldest first:
//
//   - `0.1` - flat keys, types as "name  description" strings
//   - `0.2-dev.0` - tables for types, scopes, ticket and templates
//   - `0.2-dev.1` - adds `ticket.required`
//   - `0.2-dev.2` - defaults to the `#` ticket prefix
//   - `0.2-dev.3` - adds `accept = "any"` scopes
//   - `0.2` - final documentation comments
//
// Versions between two known ones are not supported, versions newer than the
// latest one are reported with ErrFutureVersion.
//
// # Upgrading
//
// gitz.Upgrade rewrites a file in the latest format, one version at a time.
// Documentation comments that are still the ones written by git-z are
// replaced by their newer version, comments written by users are kept.
// UpgradeOptions makes the choices a user would otherwise have to edit in by
// hand, like switching a scope list to any scope.
//
// Tables must be written as `[name]` sections to be upgraded. Inline tables
// and dotted keys are reported as ValidationErrors.
//
//	res, err := gitz.Upgrade(path, gitz.UpgradeOptions{})
//	if errors.Is(err, gitz.ErrUpToDate) {
//		// nothing to do
//	}
//
// # Error Handling
//
// Errors can be checked with errors.Is and errors.As:
//
//   - ErrNoConfigFile - there is no file at the path
//   - *ParseError - the file is not valid TOML
//   - ErrMissingVersion, *VersionError - the version can not be loaded
//   - ValidationErrors - the configuration breaks some rules, all of them
//     are listed
//   - *InternalError - a bug in git-z
package gitz
