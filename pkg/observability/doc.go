/*
Package observability provides tools for monitoring the ChemBot shell.

It includes Prometheus collectors for document rendering and conversation
activity, and lifecycle hooks that feed them and the structured log.

	metrics := observability.NewMetrics()
	hooks := observability.ChainHooks(
		observability.LoggingHooks(logger),
		metrics.Hooks(),
	)
	session := chat.New(chat.WithLifecycleHooks(hooks))
*/
package observability
