package sqlinline

const QSelectProfileByExternalID = `--sql 3c1f9a27-5d84-4b6e-9f02-8a41c7d0e513
select id, external_id, email, full_name, avatar_url, ai_model, locale_pref, created_at, updated_at
from profiles
where external_id = $1::text
limit 1;
`

const QSelectProfileByEmail = `--sql b8e24f60-91a3-4c7d-8e15-2f6d0a9c4b71
select id, external_id, email, full_name, avatar_url, ai_model, locale_pref, created_at, updated_at
from profiles
where email = $1::text
limit 1;
`

const QUpdateProfileModel = `--sql 7d05c3e2-4fa8-49b1-a6c0-e91824d7f3b6
update profiles
set ai_model = $2::text,
    updated_at = now()
where external_id = $1::text;
`
