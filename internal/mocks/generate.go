package mocks

//go:generate mockgen -source=../port/completion/completion.go -destination=completion.go -package=mocks -mock_names=Client=MockCompletionClient
//go:generate mockgen -source=../port/session/session.go -destination=session.go -package=mocks -mock_names=Resolver=MockSessionResolver
//go:generate mockgen -source=../port/content/content.go -destination=content.go -package=mocks -mock_names=Repository=MockContentRepository
//go:generate mockgen -source=../port/project/project.go -destination=project.go -package=mocks -mock_names=Repository=MockProjectRepository
//go:generate mockgen -source=../port/user/user.go -destination=user.go -package=mocks -mock_names=Repository=MockUserRepository
//go:generate mockgen -source=../port/ratelimit/ratelimit.go -destination=ratelimit.go -package=mocks -mock_names=Limiter=MockLimiter
//go:generate mockgen -source=../port/eventbus/eventbus.go -destination=eventbus.go -package=mocks
//go:generate mockgen -source=../port/idempotency/idempotency.go -destination=idempotency.go -package=mocks -mock_names=Store=MockIdempotencyStore
