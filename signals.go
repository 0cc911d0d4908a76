package mappable

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals emitted during hydration.
var (
	SignalBuildComplete = capitan.NewSignal("mappable.build.complete", "Build finished hydrating an object")
	SignalNestedFailed  = capitan.NewSignal("mappable.nested.failed", "Nested construction failed and the value was dropped")
)

// Field keys carried by the signals.
var (
	KeyTypeName = capitan.NewStringKey("type_name")
	KeyField    = capitan.NewStringKey("field")
	KeyFields   = capitan.NewIntKey("fields")
	KeyIssues   = capitan.NewIntKey("issues")
	KeyDuration = capitan.NewDurationKey("duration")
	KeyError    = capitan.NewErrorKey("error")
)

func emitBuildComplete(ctx context.Context, typeName string, fields, issues int, d time.Duration) {
	capitan.Emit(ctx, SignalBuildComplete,
		KeyTypeName.Field(typeName),
		KeyFields.Field(fields),
		KeyIssues.Field(issues),
		KeyDuration.Field(d),
	)
}

func emitNestedFailed(ctx context.Context, typeName, field string, err error) {
	capitan.Error(ctx, SignalNestedFailed,
		KeyTypeName.Field(typeName),
		KeyField.Field(field),
		KeyError.Field(err),
	)
}
