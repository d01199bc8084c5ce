package generator

// ForFeatures returns the package generators for the enabled features, in
// the order they run: ui, api, db.
func ForFeatures(env Env) []PackageGenerator {
	fs := env.Data.Features
	var gens []PackageGenerator
	if fs.UI {
		gens = append(gens, NewUI(env))
	}
	if fs.API {
		gens = append(gens, NewAPI(env))
	}
	if fs.DB {
		gens = append(gens, NewDB(env))
	}
	return gens
}
