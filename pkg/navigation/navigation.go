// SPDX-FileCopyrightText: 2024 SAP SE or an SAP affiliate company and Gardener contributors
//
// SPDX-License-Identifier: Apache-2.0

package navigation

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/sourceyorg/navforge/pkg/api"
	"github.com/sourceyorg/navforge/pkg/internal/link"
	"k8s.io/klog/v2"
)

// Transformation is the way callers contribute checks to the sidebar processing.
// It is invoked once per group with a nil item, then once per item of that group.
// field is the configuration path of the visited entry, e.g. sidebar[1] or
// sidebar[1].items[0].
type Transformation func(field string, group *api.Group, item *api.Item) error

// Build validates a sidebar and returns a render-ready copy of it. Group and item
// order are preserved. The input is left untouched. Build stops at the first
// violation in document order, which is an *api.ConfigurationError for
// malformed entries.
func Build(groups []*api.Group, additional ...Transformation) ([]*api.Group, error) {
	sidebar := copyGroups(groups)
	if err := processSidebar(sidebar, true, transformations(additional)...); err != nil {
		return nil, err
	}
	return sidebar, nil
}

// Validate runs the same checks as Build but collects all violations
func Validate(groups []*api.Group, additional ...Transformation) error {
	return processSidebar(copyGroups(groups), false, transformations(additional)...)
}

func transformations(additional []Transformation) []Transformation {
	return append([]Transformation{
		validateGroup,
		validateItem,
		warnDuplicateLabels(),
	}, additional...)
}

// processSidebar visits the entries in document order, a group before its items,
// and applies the transformations to each entry in turn. The first failing
// transformation ends the checks of that entry. Nil entries are reported
// without running the transformations.
func processSidebar(groups []*api.Group, failFast bool, functions ...Transformation) error {
	var errs *multierror.Error
	for i, group := range groups {
		if err := processGroup(functions, fmt.Sprintf("sidebar[%d]", i), group, failFast); err != nil {
			if failFast {
				return err
			}
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func processGroup(functions []Transformation, field string, group *api.Group, failFast bool) error {
	if group == nil {
		return &api.ConfigurationError{Field: field, Reason: "must not be empty"}
	}
	var errs *multierror.Error
	if err := processEntry(functions, field, group, nil); err != nil {
		if failFast {
			return err
		}
		errs = multierror.Append(errs, err)
	}
	for j, item := range group.Items {
		itemField := fmt.Sprintf("%s.items[%d]", field, j)
		if item == nil {
			if failFast {
				return &api.ConfigurationError{Field: itemField, Reason: "must not be empty"}
			}
			errs = multierror.Append(errs, &api.ConfigurationError{Field: itemField, Reason: "must not be empty"})
			continue
		}
		if err := processEntry(functions, itemField, group, item); err != nil {
			if failFast {
				return err
			}
			errs = multierror.Append(errs, err)
		}
	}
	return errs.ErrorOrNil()
}

func processEntry(functions []Transformation, field string, group *api.Group, item *api.Item) error {
	for _, f := range functions {
		if err := f(field, group, item); err != nil {
			return err
		}
	}
	return nil
}

func validateGroup(field string, group *api.Group, item *api.Item) error {
	if item != nil {
		return nil
	}
	if group.Label == "" {
		return &api.ConfigurationError{Field: field + ".label", Reason: "must not be empty"}
	}
	if len(group.Items) == 0 {
		return &api.ConfigurationError{Field: field + ".items", Value: group.Label, Reason: "group must contain at least one item"}
	}
	return nil
}

func validateItem(field string, group *api.Group, item *api.Item) error {
	if item == nil {
		return nil
	}
	if item.Label == "" {
		return &api.ConfigurationError{Field: field + ".label", Value: item.Label, Reason: "must not be empty"}
	}
	if err := link.ValidateRootRelative(item.Link); err != nil {
		return &api.ConfigurationError{Field: field + ".link", Value: item.Link, Reason: err.Error()}
	}
	return nil
}

// warnDuplicateLabels logs sibling groups sharing a label. Unique labels are
// recommended but not required by the framework.
func warnDuplicateLabels() Transformation {
	seen := map[string]string{}
	return func(field string, group *api.Group, item *api.Item) error {
		if item != nil || group.Label == "" {
			return nil
		}
		if first, ok := seen[group.Label]; ok {
			klog.Warningf("%s has the same label %q as %s", field, group.Label, first)
			return nil
		}
		seen[group.Label] = field
		return nil
	}
}

func copyGroups(groups []*api.Group) []*api.Group {
	if groups == nil {
		return nil
	}
	out := make([]*api.Group, 0, len(groups))
	for _, g := range groups {
		if g == nil {
			out = append(out, nil)
			continue
		}
		out = append(out, g.Copy())
	}
	return out
}
