package gitz

import (
	"fmt"

	"github.com/gitz-dev/gitz/tomldoc"
)

func (c *ConfigV0_2Dev2) upgrade(opts UpgradeOptions) (*UpgradeStep, error) {
	next := ConfigV0_2Dev3(tables(*c).clone())

	switched := opts.SwitchScopesToAny && next.Scopes.Mode == ScopesList
	if switched {
		next.Scopes = Scopes{Mode: ScopesAny}
	}

	return &UpgradeStep{
		From: V0_2Dev2,
		To:   V0_2Dev3,
		next: &next,
		patch: func(doc *tomldoc.Document) error {
			return patchFromV0_2Dev2(doc, next.Scopes, switched)
		},
	}, nil
}

// patchFromV0_2Dev2 documents the new "any" scope mode, and switches to it
// when asked to.
func patchFromV0_2Dev2(doc *tomldoc.Document, scopes Scopes, switched bool) error {
	if err := expectVersion(doc, V0_2Dev2); err != nil {
		return err
	}
	if err := setVersion(doc, V0_2Dev3); err != nil {
		return err
	}

	t, found := doc.Table("scopes")
	if found != (scopes.Mode != ScopesNone) {
		return fmt.Errorf("%w: [scopes] present is %t, scope mode is %s", ErrInconsistentDocument, found, scopes.Mode)
	}
	if !found {
		doc.ReplaceComment(dev0ScopesCommented, dev3ScopesCommented)

		return nil
	}

	accept, err := requireEntry(doc, "scopes.accept")
	if err != nil {
		return err
	}
	accept.ReplacePrefix(dev0ScopesAcceptDoc, scopesAcceptDoc)

	if switched {
		accept.SetString(string(ScopesAny))
		if _, found := t.Remove("list"); !found {
			return fmt.Errorf("%w: no \"scopes.list\" entry", ErrInconsistentDocument)
		}
	}

	return nil
}
