// Package v1 contains API Schema definitions for the pizza v1 API group.
// +kubebuilder:object:generate=true
// +groupName=pizza.bilalashraf.xyz
package v1

import (
	"k8s.io/apimachinery/pkg/runtime"
	"k8s.io/apimachinery/pkg/runtime/schema"
	"sigs.k8s.io/controller-runtime/pkg/scheme"
)

var (
	// GroupVersion is group version used to register these objects.
	GroupVersion = schema.GroupVersion{Group: "pizza.bilalashraf.xyz", Version: "v1"}

	// SchemeBuilder is used to add go types to the GroupVersionKind scheme.
	SchemeBuilder = &scheme.Builder{GroupVersion: GroupVersion}

	// AddToScheme adds the types in this group-version to the given scheme.
	AddToScheme = SchemeBuilder.AddToScheme
)

// Kind and Resource are the names the CRD is served under.
const (
	Kind     = "PizzaOrder"
	Resource = "pizzaorders"
)

// AddToSchemeAt registers PizzaOrder types under a caller-chosen group
// version. Clusters that installed the CRD under another group use this
// instead of AddToScheme.
func AddToSchemeAt(s *runtime.Scheme, gv schema.GroupVersion) error {
	if gv.Empty() {
		gv = GroupVersion
	}
	b := &scheme.Builder{GroupVersion: gv}
	b.Register(&PizzaOrder{}, &PizzaOrderList{})
	return b.AddToScheme(s)
}
