package adce

// extensionsAllowlist is the set of SPIR-V extensions ADCE is known to
// be safe to run in the presence of. An extension outside this list
// may change instruction semantics in ways the liveness rules here do
// not account for, so Run bails out without modifying the module
// rather than risk silently mis-optimizing it.
var extensionsAllowlist = map[string]bool{
	"SPV_AMD_shader_explicit_vertex_parameter": true,
	"SPV_AMD_shader_trinary_minmax":            true,
	"SPV_AMD_gcn_shader":                       true,
	"SPV_KHR_shader_ballot":                    true,
	"SPV_AMD_shader_ballot":                    true,
	"SPV_AMD_gpu_shader_half_float":            true,
	"SPV_KHR_shader_draw_parameters":           true,
	"SPV_KHR_subgroup_vote":                    true,
	"SPV_KHR_16bit_storage":                    true,
	"SPV_KHR_device_group":                     true,
	"SPV_KHR_multiview":                        true,
	"SPV_NVX_multiview_per_view_attributes":    true,
	"SPV_NV_viewport_array2":                   true,
	"SPV_NV_stereo_view_rendering":             true,
	"SPV_NV_sample_mask_override_coverage":     true,
	"SPV_NV_geometry_shader_passthrough":       true,
	"SPV_AMD_texture_gather_bias_lod":          true,
	"SPV_KHR_storage_buffer_storage_class":     true,
	"SPV_AMD_gpu_shader_int16":                 true,
	"SPV_KHR_post_depth_coverage":              true,
	"SPV_KHR_shader_atomic_counter_ops":        true,
	"SPV_EXT_shader_stencil_export":            true,
	"SPV_EXT_shader_viewport_index_layer":      true,
	"SPV_AMD_shader_image_load_store_lod":      true,
	"SPV_AMD_shader_fragment_mask":             true,
	"SPV_EXT_fragment_fully_covered":           true,
	"SPV_AMD_gpu_shader_half_float_fetch":      true,
	"SPV_GOOGLE_decorate_string":               true,
	"SPV_GOOGLE_hlsl_functionality1":           true,
}

func allExtensionsSupported(m moduleExtensions, allowlist map[string]bool) bool {
	supported := true
	m.ForEachExtensionName(func(name string) {
		if !allowlist[name] {
			supported = false
		}
	})
	return supported
}

// allowlistFrom returns names as a lookup set, or the package's default
// allowlist when names is empty.
func allowlistFrom(names []string) map[string]bool {
	if len(names) == 0 {
		return extensionsAllowlist
	}
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return set
}

// moduleExtensions is the narrow slice of *ir.Module that
// allExtensionsSupported needs, kept separate so it is trivially
// testable against a hand-built list of names.
type moduleExtensions interface {
	ForEachExtensionName(f func(name string))
}
