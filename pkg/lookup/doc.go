// Package lookup provides deferred rulekit rules backed by external stores:
// Redis sets and keys, and PostgreSQL tables.
//
// These rules block on network I/O, so they are built with rulekit.Deferred
// and any rule set containing one is evaluated concurrently by
// rulekit.Evaluate and rulekit.EvaluateSchema. A store error is returned from
// the rule and therefore reported as a failure of that rule; it never aborts
// the evaluation.
//
// # Usage
//
//	client, err := lookup.ConnectRedis(ctx, redisCfg)
//	if err != nil {
//	    return err
//	}
//	rules := rulekit.NewRuleSet().
//	    Add("is string", validator.IsType(validator.String)).
//	    Add("username is free", lookup.NotMember(client, "usernames"))
//
//	pool, err := lookup.ConnectPostgres(ctx, pgCfg)
//	if err != nil {
//	    return err
//	}
//	rules.Add("team exists", lookup.RowExists(pool, "teams", "id"))
//
// Values are converted to their string form with fmt.Sprint before being
// sent to Redis; PostgreSQL receives them as query arguments. nil values
// fail without touching the store.
package lookup
