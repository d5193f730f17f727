// Package changelog gathers the change list of a WooCommerce release.
//
// The [Pipeline] first looks for the release section in the trunk readme. If
// the section is there, it becomes a single synthetic [Entry]. Otherwise the
// GitHub milestone named after the version is resolved, its closed pull
// requests are collected across pages, and each one is enriched with the
// "Changes proposed" section of its description.
//
// # Usage
//
//	p := changelog.NewPipeline(trunk, gh, logger)
//	res, err := p.Run(ctx, "9.9.0")
//	if err != nil {
//	    return err
//	}
//	path, err := changelog.Save("changelogs", "9.9.0", res.Entries)
//
// The extractors ([ExtractChangesProposed], [ExtractChangesParagraph]) and
// [SliceSection] are pure functions over text. [Augmenter] rewrites an existing
// changelog file by inserting pull request descriptions below each PR link.
package changelog
