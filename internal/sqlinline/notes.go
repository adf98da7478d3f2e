package sqlinline

const QInsertNote = `--sql 5b8c1e22-7a41-4f3c-b2d9-664efc0a91b3
insert into notes(id, donor_id, user_id, title, content, attachment_url, created_at)
values (gen_random_uuid(), $1::uuid, $2::uuid, $3::text, $4::text, nullif($5::text, ''), now())
returning id, created_at;
`

const QListNotesByDonor = `--sql 9d4f7a05-2c68-41e9-a3b7-11c85de0f246
select id, donor_id, user_id, title, content, coalesce(attachment_url, ''), created_at
from notes
where donor_id = $1::uuid and user_id = $2::uuid
order by created_at desc;
`
